package fixture

import (
	"github.com/sarchlab/minirv/isa"
)

// The corpus programs, hand-assembled against the bare-metal convention:
// no runtime, entry at _start, characters printed one at a time through the
// environment call with the character in a1. Entry routines either fall off
// the end of the text region or return through the loader's ra sentinel;
// both terminate the run normally.

// emitPrint emits the shared word-string print routine.
//
// print: a0 = pointer to word string, a2 = word count. Clobbers t0, t1, a1.
func emitPrint(a *asm) {
	a.label("print")
	a.add(isa.T0, isa.A0, isa.Zero)
	a.add(isa.T1, isa.A2, isa.A2)
	a.add(isa.T1, isa.T1, isa.T1)
	a.add(isa.T1, isa.T1, isa.T0) // end = ptr + 4*count
	a.label("print_loop")
	a.bgeu(isa.T0, isa.T1, "print_done")
	a.lw(isa.A1, 0, isa.T0)
	a.ecall()
	a.addi(isa.T0, isa.T0, 4)
	a.jal(isa.Zero, "print_loop")
	a.label("print_done")
	a.jalr(isa.Zero, isa.RA, 0)
}

// emitSortData emits the shared data region of the two sorting fixtures.
func emitSortData(a *asm) {
	a.dlabel("arr")
	a.wordStr("daybreak")
	a.dlabel("bef")
	a.wordStr("before: ")
	a.dlabel("aft")
	a.wordStr("after: ")
}

// emitSortStart emits the shared _start shape of the two sorting fixtures:
// print "before: " and the array, sort, print "after: " and the array again.
// The caller emits the sort call in between.
func emitSortStart(a *asm, emitSortCall func()) {
	a.label("_start")
	a.la(isa.A0, "bef")
	a.addi(isa.A2, isa.Zero, 8)
	a.jal(isa.RA, "print")
	a.la(isa.A0, "arr")
	a.addi(isa.A2, isa.Zero, 8)
	a.jal(isa.RA, "print")
	a.addi(isa.A1, isa.Zero, '\n')
	a.ecall()

	emitSortCall()

	a.la(isa.A0, "aft")
	a.addi(isa.A2, isa.Zero, 7)
	a.jal(isa.RA, "print")
	a.la(isa.A0, "arr")
	a.addi(isa.A2, isa.Zero, 8)
	a.jal(isa.RA, "print")
	// _start is last in text and falls off the end.
}

// buildBubbleSort sorts the eight-character array in place with bubble sort
// and prints it before and after.
func buildBubbleSort() (program []byte, textLen, entry uint32) {
	a := newAsm()

	emitPrint(a)

	// bubble: a0 = arr, a1 = n. In-place, shrinking upper bound.
	a.label("bubble")
	a.addi(isa.T0, isa.A1, -1)
	a.add(isa.T0, isa.T0, isa.T0)
	a.add(isa.T0, isa.T0, isa.T0)
	a.add(isa.T0, isa.T0, isa.A0) // last = &arr[n-1]
	a.label("bubble_outer")
	a.bgeu(isa.A0, isa.T0, "bubble_ret")
	a.add(isa.T1, isa.A0, isa.Zero)
	a.label("bubble_inner")
	a.bgeu(isa.T1, isa.T0, "bubble_pass_done")
	a.lw(isa.T2, 0, isa.T1)
	a.lw(isa.T3, 4, isa.T1)
	a.bgeu(isa.T3, isa.T2, "bubble_no_swap")
	a.sw(isa.T3, 0, isa.T1)
	a.sw(isa.T2, 4, isa.T1)
	a.label("bubble_no_swap")
	a.addi(isa.T1, isa.T1, 4)
	a.jal(isa.Zero, "bubble_inner")
	a.label("bubble_pass_done")
	a.addi(isa.T0, isa.T0, -4) // largest element is in place
	a.jal(isa.Zero, "bubble_outer")
	a.label("bubble_ret")
	a.jalr(isa.Zero, isa.RA, 0)

	emitSortStart(a, func() {
		a.la(isa.A0, "arr")
		a.addi(isa.A1, isa.Zero, 8)
		a.jal(isa.RA, "bubble")
	})

	emitSortData(a)

	program, textLen = a.assemble()
	return program, textLen, a.addrOf("_start")
}

// buildQuickSort sorts the same array with a recursive Lomuto-partition
// quicksort, exercising call frames and callee-saved register spills.
func buildQuickSort() (program []byte, textLen, entry uint32) {
	a := newAsm()

	emitPrint(a)

	// qsort: a0 = arr, a1 = lo, a2 = hi (word indices, unsigned).
	a.label("qsort")
	a.bgeu(isa.A1, isa.A2, "qsort_ret")
	a.addi(isa.SP, isa.SP, -20)
	a.sw(isa.RA, 16, isa.SP)
	a.sw(isa.S0, 12, isa.SP)
	a.sw(isa.S1, 8, isa.SP)
	a.sw(isa.S2, 4, isa.SP)
	a.sw(isa.S3, 0, isa.SP)
	a.add(isa.S0, isa.A0, isa.Zero)
	a.add(isa.S1, isa.A1, isa.Zero)
	a.add(isa.S2, isa.A2, isa.Zero)

	// Partition around pivot = arr[hi].
	a.add(isa.T0, isa.S2, isa.S2)
	a.add(isa.T0, isa.T0, isa.T0)
	a.add(isa.T0, isa.T0, isa.S0) // &arr[hi]
	a.lw(isa.T4, 0, isa.T0)       // pivot
	a.addi(isa.S3, isa.S1, -1)    // i = lo-1
	a.add(isa.T1, isa.S1, isa.Zero)
	a.label("qsort_part")
	a.bgeu(isa.T1, isa.S2, "qsort_part_done")
	a.add(isa.T2, isa.T1, isa.T1)
	a.add(isa.T2, isa.T2, isa.T2)
	a.add(isa.T2, isa.T2, isa.S0) // &arr[j]
	a.lw(isa.T3, 0, isa.T2)
	a.bgeu(isa.T4, isa.T3, "qsort_swap") // arr[j] <= pivot
	a.jal(isa.Zero, "qsort_next")
	a.label("qsort_swap")
	a.addi(isa.S3, isa.S3, 1)
	a.add(isa.T5, isa.S3, isa.S3)
	a.add(isa.T5, isa.T5, isa.T5)
	a.add(isa.T5, isa.T5, isa.S0) // &arr[i]
	a.lw(isa.T6, 0, isa.T5)
	a.sw(isa.T3, 0, isa.T5)
	a.sw(isa.T6, 0, isa.T2)
	a.label("qsort_next")
	a.addi(isa.T1, isa.T1, 1)
	a.jal(isa.Zero, "qsort_part")
	a.label("qsort_part_done")
	a.addi(isa.S3, isa.S3, 1) // p = i+1
	a.add(isa.T5, isa.S3, isa.S3)
	a.add(isa.T5, isa.T5, isa.T5)
	a.add(isa.T5, isa.T5, isa.S0) // &arr[p]
	a.lw(isa.T6, 0, isa.T5)
	a.lw(isa.T3, 0, isa.T0)
	a.sw(isa.T3, 0, isa.T5)
	a.sw(isa.T6, 0, isa.T0)

	// Left segment [lo, p-1] is empty when lo >= p; the guard also keeps
	// the unsigned index from wrapping at p == 0.
	a.bgeu(isa.S1, isa.S3, "qsort_right")
	a.add(isa.A0, isa.S0, isa.Zero)
	a.add(isa.A1, isa.S1, isa.Zero)
	a.addi(isa.A2, isa.S3, -1)
	a.jal(isa.RA, "qsort")
	a.label("qsort_right")
	a.add(isa.A0, isa.S0, isa.Zero)
	a.addi(isa.A1, isa.S3, 1)
	a.add(isa.A2, isa.S2, isa.Zero)
	a.jal(isa.RA, "qsort")

	a.lw(isa.RA, 16, isa.SP)
	a.lw(isa.S0, 12, isa.SP)
	a.lw(isa.S1, 8, isa.SP)
	a.lw(isa.S2, 4, isa.SP)
	a.lw(isa.S3, 0, isa.SP)
	a.addi(isa.SP, isa.SP, 20)
	a.label("qsort_ret")
	a.jalr(isa.Zero, isa.RA, 0)

	emitSortStart(a, func() {
		a.la(isa.A0, "arr")
		a.add(isa.A1, isa.Zero, isa.Zero)
		a.addi(isa.A2, isa.Zero, 7)
		a.jal(isa.RA, "qsort")
	})

	emitSortData(a)

	program, textLen = a.assemble()
	return program, textLen, a.addrOf("_start")
}

// buildFibNonRecursive computes fib(42) iteratively and leaves the result in
// a0.
func buildFibNonRecursive() (program []byte, textLen, entry uint32) {
	a := newAsm()

	a.label("_start")
	a.add(isa.T0, isa.Zero, isa.Zero) // a = 0
	a.addi(isa.T1, isa.Zero, 1)       // b = 1
	a.addi(isa.T2, isa.Zero, 2)       // i = 2
	a.addi(isa.T4, isa.Zero, 43)
	a.label("fib_loop")
	a.bgeu(isa.T2, isa.T4, "fib_done") // while i <= 42
	a.add(isa.T3, isa.T0, isa.T1)
	a.add(isa.T0, isa.T1, isa.Zero)
	a.add(isa.T1, isa.T3, isa.Zero)
	a.addi(isa.T2, isa.T2, 1)
	a.jal(isa.Zero, "fib_loop")
	a.label("fib_done")
	a.add(isa.A0, isa.T1, isa.Zero)
	// falls off the end of text

	program, textLen = a.assemble()
	return program, textLen, a.addrOf("_start")
}

// buildFibRecursive computes fib(9) recursively and leaves the result in a0.
// The routine follows the compiled listing that ships with the original C
// source: s0 holds n, s1 accumulates fib(n-1) terms, s2 holds the constant 2.
func buildFibRecursive() (program []byte, textLen, entry uint32) {
	a := newAsm()

	a.label("fib")
	a.addi(isa.SP, isa.SP, -16)
	a.sw(isa.S0, 8, isa.SP)
	a.sw(isa.S1, 4, isa.SP)
	a.sw(isa.S2, 0, isa.SP)
	a.sw(isa.RA, 12, isa.SP)
	a.addi(isa.S0, isa.A0, 0)
	a.addi(isa.S1, isa.Zero, 0)
	a.addi(isa.S2, isa.Zero, 2)
	a.label("fib_head")
	a.beq(isa.S0, isa.Zero, "fib_base")
	a.bgeu(isa.S2, isa.S0, "fib_one")
	a.addi(isa.A0, isa.S0, -1)
	a.jal(isa.RA, "fib")
	a.addi(isa.S0, isa.S0, -2)
	a.add(isa.S1, isa.S1, isa.A0)
	a.jal(isa.Zero, "fib_head")
	a.label("fib_one")
	a.addi(isa.S0, isa.Zero, 1)
	a.label("fib_base")
	a.add(isa.A0, isa.S0, isa.S1)
	a.lw(isa.RA, 12, isa.SP)
	a.lw(isa.S0, 8, isa.SP)
	a.lw(isa.S1, 4, isa.SP)
	a.lw(isa.S2, 0, isa.SP)
	a.addi(isa.SP, isa.SP, 16)
	a.jalr(isa.Zero, isa.RA, 0)

	a.label("_start")
	a.addi(isa.SP, isa.SP, -32)
	a.addi(isa.A0, isa.Zero, 9)
	a.sw(isa.RA, 28, isa.SP)
	a.jal(isa.RA, "fib")
	a.sw(isa.A0, 12, isa.SP)
	a.lw(isa.A5, 12, isa.SP)
	a.lw(isa.RA, 28, isa.SP)
	a.sw(isa.A5, 12, isa.SP)
	a.addi(isa.SP, isa.SP, 32)
	a.jalr(isa.Zero, isa.RA, 0) // returns to the loader sentinel

	program, textLen = a.assemble()
	return program, textLen, a.addrOf("_start")
}

// buildHelloWorld prints the fourteen-character greeting.
func buildHelloWorld() (program []byte, textLen, entry uint32) {
	a := newAsm()

	a.label("_start")
	a.la(isa.T0, "hello")
	a.addi(isa.T1, isa.T0, 14*isa.WordSize)
	a.label("hello_loop")
	a.bgeu(isa.T0, isa.T1, "hello_done")
	a.lw(isa.A1, 0, isa.T0)
	a.ecall()
	a.addi(isa.T0, isa.T0, 4)
	a.jal(isa.Zero, "hello_loop")
	a.label("hello_done")
	// falls off the end of text

	a.dlabel("hello")
	a.wordStr("hello\n  world!")

	program, textLen = a.assemble()
	return program, textLen, a.addrOf("_start")
}
