// AngelaMos | 2026
// network.go

package toolkit

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/bits"
	"math/rand/v2"
	"net/netip"
	"slices"
	"strconv"
	"strings"
)

type SubnetRequest struct {
	CIDR string `json:"cidr" validate:"required,max=18"`
}

type SubnetInfo struct {
	CIDR        string `json:"cidr"`
	Network     string `json:"network"`
	Mask        string `json:"mask"`
	Wildcard    string `json:"wildcard"`
	PrefixBits  int    `json:"prefix_bits"`
	FirstHost   string `json:"first_host"`
	LastHost    string `json:"last_host"`
	Broadcast   string `json:"broadcast"`
	Addresses   uint64 `json:"addresses"`
	UsableHosts uint64 `json:"usable_hosts"`
	Class       string `json:"class"`
}

func IPv4SubnetCalculator() Widget {
	return Typed(func(_ context.Context, req SubnetRequest) (any, error) {
		prefix, err := parseIPv4Prefix(req.CIDR)
		if err != nil {
			return nil, err
		}
		return DescribeSubnet(prefix), nil
	})
}

func parseIPv4Prefix(s string) (netip.Prefix, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "/") {
		s += "/32"
	}
	prefix, err := netip.ParsePrefix(s)
	if err != nil || !prefix.Addr().Is4() {
		return netip.Prefix{}, badInput("%q is not an IPv4 CIDR block", s)
	}
	return prefix, nil
}

func DescribeSubnet(prefix netip.Prefix) SubnetInfo {
	ones := prefix.Bits()
	mask := uint32(0)
	if ones > 0 {
		mask = ^uint32(0) << (32 - ones)
	}

	network := ipv4ToUint(prefix.Masked().Addr())
	broadcast := network | ^mask
	size := uint64(1) << (32 - ones)

	first, last, usable := network+1, broadcast-1, size-2
	switch ones {
	case 32:
		first, last, usable = network, network, 1
	case 31:
		first, last, usable = network, broadcast, 2
	}

	return SubnetInfo{
		CIDR:        prefix.Masked().String(),
		Network:     uintToIPv4(network).String(),
		Mask:        uintToIPv4(mask).String(),
		Wildcard:    uintToIPv4(^mask).String(),
		PrefixBits:  ones,
		FirstHost:   uintToIPv4(first).String(),
		LastHost:    uintToIPv4(last).String(),
		Broadcast:   uintToIPv4(broadcast).String(),
		Addresses:   size,
		UsableHosts: usable,
		Class:       ipv4Class(network),
	}
}

func ipv4Class(addr uint32) string {
	switch top := addr >> 24; {
	case top < 128:
		return "A"
	case top < 192:
		return "B"
	case top < 224:
		return "C"
	case top < 240:
		return "D"
	default:
		return "E"
	}
}

func ipv4ToUint(a netip.Addr) uint32 {
	b := a.As4()
	return binary.BigEndian.Uint32(b[:])
}

func uintToIPv4(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}

type AddressRequest struct {
	Address string `json:"address" validate:"required,max=15"`
}

func IPv4AddressConverter() Widget {
	return Typed(func(_ context.Context, req AddressRequest) (any, error) {
		v, err := parseIPv4Any(req.Address)
		if err != nil {
			return nil, err
		}

		addr := uintToIPv4(v)
		mapped := netip.AddrFrom16(addr.As16())
		return map[string]string{
			"dotted":      addr.String(),
			"decimal":     strconv.FormatUint(uint64(v), 10),
			"hexadecimal": fmt.Sprintf("%08X", v),
			"binary":      fmt.Sprintf("%032b", v),
			"ipv6":        "::ffff:" + fmt.Sprintf("%04x:%04x", v>>16, v&0xffff),
			"ipv6_short":  mapped.String(),
		}, nil
	})
}

// parseIPv4Any accepts dotted-quad or a plain decimal integer.
func parseIPv4Any(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if addr, err := netip.ParseAddr(s); err == nil && addr.Is4() {
		return ipv4ToUint(addr), nil
	}
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return uint32(n), nil
	}
	return 0, badInput("%q is not an IPv4 address", s)
}

type RangeRequest struct {
	Start string `json:"start" validate:"required,max=15"`
	End   string `json:"end"   validate:"required,max=15"`
}

type RangeResult struct {
	OldStart string `json:"old_start"`
	OldEnd   string `json:"old_end"`
	OldSize  uint64 `json:"old_size"`
	NewStart string `json:"new_start"`
	NewEnd   string `json:"new_end"`
	NewSize  uint64 `json:"new_size"`
	CIDR     string `json:"cidr"`
}

// IPv4RangeExpander finds the smallest CIDR block containing both ends.
func IPv4RangeExpander() Widget {
	return Typed(func(_ context.Context, req RangeRequest) (any, error) {
		start, err := parseIPv4Any(req.Start)
		if err != nil {
			return nil, err
		}
		end, err := parseIPv4Any(req.End)
		if err != nil {
			return nil, err
		}
		if start > end {
			return nil, badInput("start must not be after end")
		}

		return ExpandRange(start, end), nil
	})
}

func ExpandRange(start, end uint32) RangeResult {
	common := bits.LeadingZeros32(start ^ end)
	if start == end {
		common = 32
	}
	mask := uint32(0)
	if common > 0 {
		mask = ^uint32(0) << (32 - common)
	}
	newStart := start & mask
	newEnd := newStart | ^mask

	return RangeResult{
		OldStart: uintToIPv4(start).String(),
		OldEnd:   uintToIPv4(end).String(),
		OldSize:  uint64(end-start) + 1,
		NewStart: uintToIPv4(newStart).String(),
		NewEnd:   uintToIPv4(newEnd).String(),
		NewSize:  uint64(newEnd-newStart) + 1,
		CIDR:     fmt.Sprintf("%s/%d", uintToIPv4(newStart), common),
	}
}

type PortRequest struct {
	Count            int  `json:"count"              validate:"omitempty,min=1,max=100"`
	Min              int  `json:"min"                validate:"omitempty,min=1,max=65535"`
	Max              int  `json:"max"                validate:"omitempty,min=1,max=65535"`
	ExcludeWellKnown bool `json:"exclude_well_known"`
}

func RandomPortGenerator() Widget {
	return Typed(func(_ context.Context, req PortRequest) (any, error) {
		count := max(req.Count, 1)
		lo := req.Min
		if lo == 0 {
			lo = 1024
		}
		hi := req.Max
		if hi == 0 {
			hi = 65535
		}
		if req.ExcludeWellKnown {
			lo = max(lo, 1024)
		}
		if lo > hi {
			return nil, badInput("min must not exceed max")
		}
		if span := hi - lo + 1; count > span {
			return nil, badInput("only %d ports available in range", span)
		}

		seen := make(map[int]struct{}, count)
		ports := make([]int, 0, count)
		for len(ports) < count {
			//nolint:gosec // G404: ports are not secrets
			p := lo + rand.IntN(hi-lo+1)
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			ports = append(ports, p)
		}
		slices.Sort(ports)
		return map[string][]int{"ports": ports}, nil
	})
}
