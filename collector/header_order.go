package collector

import "fmt"

// HeaderOrder selects the sequence in which collected headers are emitted.
type HeaderOrder string

const (
	// HeaderOrderDiscovery emits headers in the order they were first found.
	HeaderOrderDiscovery HeaderOrder = "discovery"
	// HeaderOrderDependency emits every header after the headers it includes.
	HeaderOrderDependency HeaderOrder = "dependency"
)

func (o HeaderOrder) String() string {
	return string(o)
}

// ParseHeaderOrder converts a flag value into a HeaderOrder.
func ParseHeaderOrder(value string) (HeaderOrder, error) {
	switch order := HeaderOrder(value); order {
	case HeaderOrderDiscovery, HeaderOrderDependency:
		return order, nil
	default:
		return "", fmt.Errorf("unknown header order: %s (valid options: %s, %s)", value, HeaderOrderDiscovery, HeaderOrderDependency)
	}
}

// Ordered returns the collected headers in the requested order.
func (r *Result) Ordered(order HeaderOrder) []string {
	if order == HeaderOrderDependency {
		return r.DependencyOrder
	}
	return r.Headers
}
