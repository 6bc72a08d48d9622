package net

import (
	"errors"
	"net"
	"strconv"
)

var ErrNoAddress = errors.New("no usable IPv4 address")

// OutgoingIP finds the address a tablet on the LAN should dial. No packet
// is sent: dialing UDP only selects the route.
func OutgoingIP() (net.IP, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return localIPFallback()
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok && addr.IP.To4() != nil {
		return addr.IP.To4(), nil
	}
	return localIPFallback()
}

// localIPFallback scans interfaces on networks without a default route.
func localIPFallback() (net.IP, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4(), nil
			}
		}
	}
	return nil, ErrNoAddress
}

// PenURL is the websocket URL a pen should open for a bridge on port.
func PenURL(ip net.IP, port int) string {
	return "ws://" + net.JoinHostPort(ip.String(), strconv.Itoa(port)) + PenPath
}
