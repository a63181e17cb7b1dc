package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("decoder", func() {
	It("splits a direct-mapped, 2-set address into tag, set, and offset", func() {
		p := MakePolicyBuilder().
			WithBlockSize(64).
			WithCacheSize(128).
			WithAssociativity(1).
			Build()
		d := newDecoder(p)

		Expect(d.offset(0)).To(Equal(uint32(0)))
		Expect(d.set(0)).To(Equal(uint32(0)))
		Expect(d.set(128)).To(Equal(uint32(0)))
		Expect(d.tag(128)).To(Equal(uint32(1)))
		Expect(d.tag(0)).To(Equal(uint32(0)))
	})

	It("round-trips tag/set back into a block-aligned address", func() {
		p := MakePolicyBuilder().
			WithBlockSize(64).
			WithCacheSize(16 * 1024).
			WithAssociativity(1).
			Build()
		d := newDecoder(p)

		addr := uint32(0x12340)
		tag := d.tag(addr)
		set := d.set(addr)

		Expect(d.addrOf(tag, set)).To(Equal(d.blockAddr(addr)))
	})

	It("extracts the offset within a block", func() {
		p := MakePolicyBuilder().WithBlockSize(64).WithCacheSize(64).WithAssociativity(1).Build()
		d := newDecoder(p)

		Expect(d.offset(10)).To(Equal(uint32(10)))
		Expect(d.offset(64 + 10)).To(Equal(uint32(10)))
	})
})
