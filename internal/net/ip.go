package net

import (
	"net"

	"CanvasBoard/internal/logger"
)

// GetOutgoingIP finds the preferred local IP address for the host to share.
func GetOutgoingIP() net.IP {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet; fall back to checking local interfaces.
		return getLocalIPFallback()
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP
	}
	return getLocalIPFallback()
}

// getLocalIPFallback is used on networks without internet access.
func getLocalIPFallback() net.IP {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		logger.Warnf("Could not list interface addresses: %v", err)
		return net.IPv4(127, 0, 0, 1)
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ip4 := ipnet.IP.To4(); ip4 != nil {
				return ip4
			}
		}
	}
	logger.Warnf("No suitable local IP found, share link will use loopback.")
	return net.IPv4(127, 0, 0, 1)
}
