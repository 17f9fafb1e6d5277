package net

import (
	"fmt"
	"net"
	"os"
	"sort"
	"time"

	"github.com/hashicorp/mdns"
)

// Advertise announces a host on the local network. Shut the returned server
// down to withdraw the announcement.
func Advertise(instance, service string, port int) (*mdns.Server, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		instance = host
	}

	info := []string{"CanvasBoard", "path=/ws"}
	svc, err := mdns.NewMDNSService(instance, service, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: svc})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse queries the local network for timeout and returns the websocket
// URLs of every host that answered, sorted.
func Browse(service string, timeout time.Duration) ([]string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(map[string]struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found[ShareLink(e.AddrV4, e.Port)] = struct{}{}
		}
	}()

	params := mdns.DefaultParams(service)
	params.Entries = entries
	params.Timeout = timeout
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return nil, fmt.Errorf("mDNS query for %s: %w", service, err)
	}

	links := make([]string, 0, len(found))
	for l := range found {
		links = append(links, l)
	}
	sort.Strings(links)
	return links, nil
}

// ShareLink is the websocket URL a remote client connects to.
func ShareLink(ip net.IP, port int) string {
	return fmt.Sprintf("ws://%s/ws", net.JoinHostPort(ip.String(), fmt.Sprint(port)))
}
