package auth

import (
	"fmt"
	"net"
)

// CanonicalizeIP converts an IP address to its canonical 16-byte string representation,
// so "2001:db8::1" and "2001:db8:0:0:0:0:0:1" compare equal.
func CanonicalizeIP(ip string) (string, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	canonical := parsed.To16()
	if canonical == nil {
		return "", fmt.Errorf("failed to canonicalize IP address: %s", ip)
	}
	return canonical.String(), nil
}

// AllowList is the set of client IPs permitted to call the webhook
type AllowList struct {
	ips map[string]struct{}
}

// NewAllowList canonicalizes the configured addresses. An empty list allows everyone.
func NewAllowList(ips []string) (*AllowList, error) {
	a := &AllowList{ips: make(map[string]struct{}, len(ips))}
	for _, ip := range ips {
		canonical, err := CanonicalizeIP(ip)
		if err != nil {
			return nil, err
		}
		a.ips[canonical] = struct{}{}
	}
	return a, nil
}

func (a *AllowList) Empty() bool {
	return a == nil || len(a.ips) == 0
}

// Allows reports whether ip may call; unparsable addresses are rejected unless the list is empty
func (a *AllowList) Allows(ip string) bool {
	if a.Empty() {
		return true
	}
	canonical, err := CanonicalizeIP(ip)
	if err != nil {
		return false
	}
	_, ok := a.ips[canonical]
	return ok
}

//This project is the webhook backend of the OpenSourceDUTH canteen assistant. It answers "what is served on day D" from open canteen data.
//Mensa Webhook Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
