// Copyright © 2018 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package addrmap

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"
)

type fdtNode struct {
	name     string
	props    []fdtProp
	children []fdtNode
}

type fdtProp struct {
	name  string
	value []byte
}

func cells(v ...uint32) []byte {
	b := make([]byte, 4*len(v))
	for i, x := range v {
		binary.BigEndian.PutUint32(b[4*i:], x)
	}
	return b
}

// blob encodes a minimal big endian version 17 tree.
func blob(root fdtNode) []byte {
	var st, strs bytes.Buffer
	offsets := make(map[string]int)
	cell := func(v uint32) { binary.Write(&st, binary.BigEndian, v) }
	pad := func() {
		for st.Len()%4 != 0 {
			st.WriteByte(0)
		}
	}
	var emit func(n fdtNode)
	emit = func(n fdtNode) {
		cell(1)
		st.WriteString(n.name)
		st.WriteByte(0)
		pad()
		for _, p := range n.props {
			off, ok := offsets[p.name]
			if !ok {
				off = strs.Len()
				offsets[p.name] = off
				strs.WriteString(p.name)
				strs.WriteByte(0)
			}
			cell(3)
			cell(uint32(len(p.value)))
			cell(uint32(off))
			st.Write(p.value)
			pad()
		}
		for _, c := range n.children {
			emit(c)
		}
		cell(2)
	}
	emit(root)
	cell(9)
	const hdr = 40
	var b bytes.Buffer
	for _, v := range []uint32{
		fdtMagic,
		uint32(hdr + st.Len() + strs.Len()),
		hdr,
		uint32(hdr + st.Len()),
		0,
		17,
		16,
		0,
		uint32(strs.Len()),
		uint32(st.Len()),
	} {
		binary.Write(&b, binary.BigEndian, v)
	}
	b.Write(st.Bytes())
	b.Write(strs.Bytes())
	return b.Bytes()
}

func apNode(name string, id, base uint32) fdtNode {
	return fdtNode{
		name: name,
		props: []fdtProp{
			{"compatible", []byte(Compatible + "\x00")},
			{"marvell,ap-id", cells(id)},
			{"reg", cells(base, DefaultRegsSize)},
		},
	}
}

func TestDefault(t *testing.T) {
	m := New(Default())
	if got := uintptr(m.CCUGUID(1)); got != 0xe9004808 {
		t.Errorf("wrong: 0x%x", got)
	}
	if got := uintptr(m.XbarRouting0(0, 0)); got != 0xe86a0010 {
		t.Errorf("wrong: 0x%x", got)
	}
	if got := m.Local(2, PllRing); got != 0xea6f84f0 {
		t.Errorf("wrong: 0x%x", got)
	}
	if got := m.Local(2, 0x1234); got != 0x1234 {
		t.Errorf("global address translated: 0x%x", got)
	}
	if n := m.Len(); n != MaxAP {
		t.Error("wrong:", n)
	}
}

func TestStaticPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	Static{0x1000}.RegsBase(1)
}

func TestFromFDT(t *testing.T) {
	b := blob(fdtNode{
		props: []fdtProp{{"model", []byte("a8k-p\x00")}},
		children: []fdtNode{
			{
				name: "soc",
				children: []fdtNode{
					apNode("ap@1", 1, 0xf1000000),
					apNode("ap@0", 0, 0xf0000000),
				},
			},
		},
	})
	s, err := FromFDT(b)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s, Static{0xf0000000, 0xf1000000}) {
		t.Error("wrong:", s)
	}
}

func TestFromFDTErrors(t *testing.T) {
	if _, err := FromFDT([]byte("garbage")); err == nil {
		t.Error("garbage accepted")
	}
	if _, err := FromFDT(blob(fdtNode{})); err != ErrNoAP {
		t.Error("wrong:", err)
	}
	gap := blob(fdtNode{children: []fdtNode{apNode("ap@1", 1, 0)}})
	if _, err := FromFDT(gap); err == nil {
		t.Error("missing AP0 accepted")
	}
	dup := blob(fdtNode{children: []fdtNode{
		apNode("ap@0", 0, 0),
		apNode("ap@2", 0, 0),
	}})
	if _, err := FromFDT(dup); err == nil {
		t.Error("duplicate accepted")
	}
}
