// Package remote serves the phone remote: a small HTTP API plus a
// WebSocket push channel, both backed by the playback engine's command
// queue and status broadcasts.
package remote

import "net"

// LANIP returns the local address used for outbound traffic, so the
// printed remote URL works from other devices on the network. The UDP
// dial never sends a packet; it only resolves the route.
func LANIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			return addr.IP.String()
		}
	}

	// No default route; fall back to the first non-loopback interface.
	addrs, err := net.InterfaceAddrs()
	if err == nil {
		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	return "127.0.0.1"
}
