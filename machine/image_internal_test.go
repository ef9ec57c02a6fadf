package machine

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/minirv/isa"
)

var _ = Describe("Image", func() {
	var im *Image

	BeforeEach(func() {
		im = NewImage(64)
		err := im.Install([]byte{0x13, 0x01, 0x01, 0xff, 1, 2, 3, 4}, 4)
		Expect(err).ToNot(HaveOccurred())
	})

	It("should reject a program larger than the image", func() {
		err := im.Install(make([]byte, 65), 4)

		fault, ok := isa.AsFault(err)
		Expect(ok).To(BeTrue())
		Expect(fault.Kind).To(Equal(isa.OutOfBounds))
	})

	It("should zero memory beyond the installed program", func() {
		err := im.WriteWord(60, 0x11223344)
		Expect(err).ToNot(HaveOccurred())

		err = im.Install([]byte{0x73, 0x00, 0x00, 0x00}, 4)
		Expect(err).ToNot(HaveOccurred())

		v, err := im.ReadWord(60)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(uint32(0)))
	})

	It("should read words little endian", func() {
		v, err := im.ReadWord(0)

		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(uint32(0xff010113)))
	})

	It("should write words little endian", func() {
		err := im.WriteWord(8, 0x04030201)
		Expect(err).ToNot(HaveOccurred())

		b, err := im.ReadByte(8)
		Expect(err).ToNot(HaveOccurred())
		Expect(b).To(Equal(byte(1)))

		b, err = im.ReadByte(11)
		Expect(err).ToNot(HaveOccurred())
		Expect(b).To(Equal(byte(4)))
	})

	It("should allow reads from the text region", func() {
		v, err := im.ReadWord(0)

		Expect(err).ToNot(HaveOccurred())
		Expect(v).ToNot(Equal(uint32(0)))
	})

	It("should reject writes into the text region", func() {
		err := im.WriteWord(0, 1)

		fault, ok := isa.AsFault(err)
		Expect(ok).To(BeTrue())
		Expect(fault.Kind).To(Equal(isa.ProtectionViolation))
		Expect(fault.Addr).To(Equal(uint32(0)))

		err = im.WriteByte(3, 1)
		_, ok = isa.AsFault(err)
		Expect(ok).To(BeTrue())
	})

	It("should allow a write on the first address past text", func() {
		Expect(im.WriteWord(4, 42)).To(Succeed())

		v, err := im.ReadWord(4)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(uint32(42)))
	})

	It("should allow access to the last full word", func() {
		Expect(im.WriteWord(60, 7)).To(Succeed())
	})

	It("should reject accesses straddling the image end", func() {
		err := im.WriteWord(61, 7)

		fault, ok := isa.AsFault(err)
		Expect(ok).To(BeTrue())
		Expect(fault.Kind).To(Equal(isa.OutOfBounds))
		Expect(fault.Addr).To(Equal(uint32(61)))
	})

	It("should reject accesses that wrap the address space", func() {
		_, err := im.ReadWord(0xfffffffe)

		fault, ok := isa.AsFault(err)
		Expect(ok).To(BeTrue())
		Expect(fault.Kind).To(Equal(isa.OutOfBounds))
	})
})
