package net

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/mdns"

	"SketchBoard/internal/state"
)

// ServiceType is the DNS-SD type boards advertise under.
const ServiceType = "_sketchboard._tcp"

// Board is a board found on the local network.
type Board struct {
	Instance string
	Addr     string
	Info     []string
}

// NewService describes a board listening on port. An empty instance uses
// the host name; an empty host lets mdns pick the OS host name.
func NewService(instance, host string, port int, ips []net.IP) (*mdns.MDNSService, error) {
	if instance == "" {
		h, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		instance = h
	}
	info := []string{"path=" + PenPath, "session=" + state.SessionID()}
	service, err := mdns.NewMDNSService(instance, ServiceType, "", host, port, ips, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	return service, nil
}

// Advertise announces the pen bridge on the LAN until the server is shut
// down.
func Advertise(instance string, port int) (*mdns.Server, error) {
	var ips []net.IP
	if ip, err := OutgoingIP(); err == nil {
		ips = []net.IP{ip}
	}
	service, err := NewService(instance, "", port, ips)
	if err != nil {
		return nil, err
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse collects advertised boards for the given duration.
func Browse(timeout time.Duration) ([]Board, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	var boards []Board
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if b, ok := boardOf(e); ok {
				boards = append(boards, b)
			}
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return nil, fmt.Errorf("mdns query: %w", err)
	}
	return boards, nil
}

func boardOf(e *mdns.ServiceEntry) (Board, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return Board{}, false
	}
	instance, _, _ := strings.Cut(e.Name, "."+ServiceType)
	return Board{
		Instance: instance,
		Addr:     fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port),
		Info:     e.InfoFields,
	}, true
}
