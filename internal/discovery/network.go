package discovery

import (
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"

	"github.com/projectdiscovery/mapcidr"
)

// LocalPrefix returns the first three octets of the first non-loopback
// IPv4 address returned by addrs, or fallback when there is none
func LocalPrefix(addrs func() ([]net.Addr, error), fallback string) string {
	list, err := addrs()

	if err != nil {
		return fallback
	}

	for _, addr := range list {
		var ip net.IP

		switch a := addr.(type) {
		case *net.IPNet:
			ip = a.IP
		case *net.IPAddr:
			ip = a.IP
		}

		if ip == nil || ip.IsLoopback() {
			continue
		}

		if v4 := ip.To4(); v4 != nil {
			return fmt.Sprintf("%d.%d.%d", v4[0], v4[1], v4[2])
		}
	}

	return fallback
}

// Addresses enumerates <prefix>.start through <prefix>.end in ascending
// order
func Addresses(prefix string, start, end int) ([]string, error) {
	if ip := net.ParseIP(prefix + ".0"); ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("invalid network prefix %q", prefix)
	}

	if start < 0 || end > 255 || start > end {
		return nil, fmt.Errorf("invalid address range %d-%d", start, end)
	}

	ips, err := mapcidr.IPAddresses(prefix + ".0/24")

	if err != nil {
		return nil, err
	}

	octets := []int{}

	for _, ip := range ips {
		idx := strings.LastIndex(ip, ".")

		if idx < 0 {
			continue
		}

		octet, err := strconv.Atoi(ip[idx+1:])

		if err != nil || octet < start || octet > end {
			continue
		}

		octets = append(octets, octet)
	}

	sort.Ints(octets)

	targets := make([]string, 0, len(octets))

	for _, octet := range octets {
		targets = append(targets, prefix+"."+strconv.Itoa(octet))
	}

	return targets, nil
}
