// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mmio

import (
	"fmt"
	"os"
	"sync/atomic"
	"syscall"
	"unsafe"
)

const DevMem = "/dev/mem"

// Window is a physical address range mapped by Mem.
type Window struct {
	Base uintptr
	Size uintptr
}

// Mem maps windows of DevMem and accesses registers within them.
type Mem struct {
	f       *os.File
	windows []mapped
}

type mapped struct {
	Window
	data []byte
}

// OpenMem maps each window; Base and Size must be page aligned.
func OpenMem(windows ...Window) (*Mem, error) {
	f, err := os.OpenFile(DevMem, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	m := &Mem{f: f}
	for _, w := range windows {
		data, err := syscall.Mmap(int(f.Fd()), int64(w.Base),
			int(w.Size), syscall.PROT_READ|syscall.PROT_WRITE,
			syscall.MAP_SHARED)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("mmap 0x%x: %v", w.Base, err)
		}
		m.windows = append(m.windows, mapped{w, data})
	}
	return m, nil
}

func (m *Mem) Close() error {
	for _, w := range m.windows {
		syscall.Munmap(w.data)
	}
	m.windows = nil
	return m.f.Close()
}

func (m *Mem) ptr(addr uintptr) *uint32 {
	for _, w := range m.windows {
		if addr >= w.Base && addr+4 <= w.Base+w.Size {
			return (*uint32)(unsafe.Pointer(&w.data[addr-w.Base]))
		}
	}
	panic(fmt.Errorf("mmio: 0x%x: not mapped", addr))
}

func (m *Mem) Read32(addr uintptr) uint32 {
	return atomic.LoadUint32(m.ptr(addr))
}

func (m *Mem) Write32(addr uintptr, data uint32) {
	atomic.StoreUint32(m.ptr(addr), data)
}
