package fixture

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/minirv/isa"
)

var _ = Describe("Corpus", func() {
	It("should return the fixtures in manifest order", func() {
		fixtures, err := Corpus()

		Expect(err).ToNot(HaveOccurred())

		names := make([]string, 0, len(fixtures))
		for _, f := range fixtures {
			names = append(names, f.Name)
		}
		Expect(names).To(Equal([]string{
			"hello_world",
			"bubble_sort",
			"quick_sort",
			"fib_non_recursive",
			"fib_recursive",
		}))
	})

	It("should carry the declared expectations", func() {
		hello, err := ByName("hello_world")
		Expect(err).ToNot(HaveOccurred())
		Expect(hello.Expect.Kind).To(Equal(ExpectOutput))
		Expect(hello.Expect.Output).To(Equal("hello\n  world!"))

		fib, err := ByName("fib_non_recursive")
		Expect(err).ToNot(HaveOccurred())
		Expect(fib.Expect.Kind).To(Equal(ExpectRegister))
		Expect(fib.Expect.Register).To(Equal(isa.A0))
		Expect(fib.Expect.Value).To(Equal(uint32(267914296)))
	})

	It("should produce well-formed images", func() {
		fixtures, err := Corpus()
		Expect(err).ToNot(HaveOccurred())

		for _, f := range fixtures {
			Expect(f.TextLen % isa.WordSize).To(Equal(uint32(0)),
				"fixture %s", f.Name)
			Expect(f.TextLen).To(BeNumerically("<=", len(f.Program)),
				"fixture %s", f.Name)
			Expect(f.Entry).To(BeNumerically("<", f.TextLen),
				"fixture %s", f.Name)
			Expect(f.Entry % isa.WordSize).To(Equal(uint32(0)),
				"fixture %s", f.Name)

			for addr := uint32(0); addr < f.TextLen; addr += isa.WordSize {
				_, err := isa.Decode(readWord(f.Program, int(addr)))
				Expect(err).ToNot(HaveOccurred(),
					"fixture %s, word at %d", f.Name, addr)
			}
		}
	})

	It("should reject unknown fixture names", func() {
		_, err := ByName("no_such_fixture")

		Expect(err).To(HaveOccurred())
	})
})
