// Package pc holds the program's entry address: the one memory address,
// set explicitly by the front end, at which execution should begin.
package pc

import "github.com/sirupsen/logrus"

// PC is the entry address record for one assembly run. The zero value
// means "unset," which the ELF emitter treats as entry address 0.
type PC struct {
	addr uint64
	set  bool
}

// New returns an unset PC.
func New() *PC {
	return &PC{}
}

// Set records addr as the entry address.
func (p *PC) Set(addr uint64) {
	p.addr = addr
	p.set = true
}

// Get returns the entry address and whether it was ever Set.
func (p *PC) Get() (uint64, bool) {
	return p.addr, p.set
}

// Dump logs the entry address at debug level.
func (p *PC) Dump() {
	logrus.WithFields(logrus.Fields{"address": p.addr, "set": p.set}).Debug("program counter")
}
