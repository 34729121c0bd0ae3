package elements

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// RPCClient is a minimal JSON-RPC 1.0 client for the node's HTTP interface
// with basic access authentication.
type RPCClient struct {
	serverAddr string
	user       string
	passwd     string
	httpClient *http.Client
	nextID     uint64
}

// NewClient returns a RPCClient connected to host:port with the given
// credentials.
func NewClient(
	host string, port int, user, passwd string, useSSL bool, timeout int,
) (*RPCClient, error) {
	if len(host) == 0 {
		return nil, ErrMissingRPCHost
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &RPCClient{
		serverAddr: fmt.Sprintf("%s://%s:%d", scheme, host, port),
		user:       user,
		passwd:     passwd,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}, nil
}

// RPCResponse is the envelope of every JSON-RPC response.
type RPCResponse struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Err    *RPCError       `json:"error"`
}

// RPCError is the error object of a failed JSON-RPC call.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	ID     uint64      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

func (c *RPCClient) call(method string, params interface{}) (RPCResponse, error) {
	var response RPCResponse
	if params == nil {
		params = []interface{}{}
	}

	payload, err := json.Marshal(rpcRequest{
		ID:     atomic.AddUint64(&c.nextID, 1),
		Method: method,
		Params: params,
	})
	if err != nil {
		return response, err
	}

	req, err := http.NewRequest(
		http.MethodPost, c.serverAddr, bytes.NewReader(payload),
	)
	if err != nil {
		return response, err
	}
	req.SetBasicAuth(c.user, c.passwd)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response, err
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return response, fmt.Errorf(
			"unexpected response from node (status %d): %s",
			resp.StatusCode, string(body),
		)
	}
	return response, nil
}

// handleError unwraps a call's transport and application errors.
func handleError(err error, r *RPCResponse) error {
	if err != nil {
		return err
	}
	if r.Err != nil {
		return r.Err
	}
	return nil
}
