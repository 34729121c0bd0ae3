package elements

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/simplicity-wallet/simplicityw/pkg/circuitbreaker"
	"github.com/simplicity-wallet/simplicityw/pkg/explorer"
)

type elements struct {
	client *RPCClient
	cb     *gobreaker.CircuitBreaker
}

// NewService returns the Elements implementation of the explorer Service
// interface. It establishes an insecure connection with the JSON-RPC
// interface of the node with no TLS termination and verifies it is
// reachable before returning.
func NewService(endpoint string) (explorer.Service, error) {
	if err := validateEndpoint(endpoint); err != nil {
		return nil, err
	}

	parsedEndpoint, _ := url.Parse(endpoint)
	host := parsedEndpoint.Hostname()
	port, _ := strconv.Atoi(parsedEndpoint.Port())
	user := parsedEndpoint.User.Username()
	password, _ := parsedEndpoint.User.Password()

	client, err := NewClient(host, port, user, password, false, 30)
	if err != nil {
		return nil, err
	}

	service := &elements{client, circuitbreaker.NewCircuitBreaker()}
	if _, err := service.GetBlockHeight(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	return service, nil
}

// call routes every RPC through the circuit breaker so that an unreachable
// node trips fast instead of hammering it.
func (e *elements) call(method string, params interface{}) (RPCResponse, error) {
	res, err := e.cb.Execute(func() (interface{}, error) {
		r, err := e.client.call(method, params)
		if err != nil {
			return r, err
		}
		return r, nil
	})
	if err != nil {
		return RPCResponse{}, err
	}
	return res.(RPCResponse), nil
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return ErrMissingRPCEndpoint
	}
	parsedEndpoint, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}

	if parsedEndpoint.Hostname() == "" {
		return ErrMissingRPCHost
	}
	if parsedEndpoint.Port() == "" {
		return ErrMissingRPCPort
	}
	if parsedEndpoint.User.Username() == "" {
		return ErrMissingRPCUser
	}
	if _, ok := parsedEndpoint.User.Password(); !ok {
		return ErrMissingRPCPassword
	}

	return nil
}
