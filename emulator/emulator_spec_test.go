package emulator_test

import (
	"bytes"
	"errors"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/lisa/cpu"
	"github.com/ezrec/lisa/emulator"
	"github.com/ezrec/lisa/io"
)

var _ = Describe("Emulator", func() {
	var (
		mockCtrl    *gomock.Controller
		mockLoader  *MockLoader
		emu         *emulator.Emulator
		output      *bytes.Buffer
		diagnostics *bytes.Buffer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockLoader = NewMockLoader(mockCtrl)

		output = &bytes.Buffer{}
		diagnostics = &bytes.Buffer{}

		emu = emulator.NewEmulator()
		emu.Files = mockLoader
		emu.Tape.Output = output
		emu.Diagnostics = diagnostics
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	run := func(text string) error {
		Expect(emu.Load(text)).To(Succeed())
		Expect(emu.Reset()).To(Succeed())
		return emu.Run()
	}

	Context("LOD", func() {
		It("should copy file contents into memory", func() {
			mockLoader.EXPECT().
				Load("data.txt").
				Return([]byte("xyz"), nil)

			err := run("LOD 20 \"data.txt\"\nSET REG[0] 20\nOSR REG[0]\n")

			Expect(err).NotTo(HaveOccurred())
			Expect(output.String()).To(Equal("xyz"))
			Expect(emu.Cpu.Memory[23]).To(Equal(byte(0)))
			Expect(emu.Cpu.Register[cpu.REG_STRLEN]).To(Equal(byte(0)))
		})

		It("should stop on an unreadable file", func() {
			mockLoader.EXPECT().
				Load("secret").
				Return(nil, &io.ErrFile{Path: "secret", Err: io.ErrFileUnreadable})

			err := run("INC REG[0]\nLOD 0 \"secret\"\nINC REG[0]\n")

			Expect(errors.Is(err, io.ErrFileUnreadable)).To(BeTrue())
			var runtime *emulator.ErrRuntime
			Expect(errors.As(err, &runtime)).To(BeTrue())
			Expect(runtime.LineNo).To(Equal(2))
			Expect(emu.Cpu.Register[0]).To(Equal(byte(1)))
		})

		It("should report a load past the end of memory", func() {
			mockLoader.EXPECT().
				Load("big").
				Return(make([]byte, 16), nil)

			err := run("LOD 65530 \"big\"\n")

			Expect(err).NotTo(HaveOccurred())
			Expect(emu.Reported).To(Equal(1))
			Expect(diagnostics.String()).To(HavePrefix("Error (Line 1): "))
		})
	})

	Context("Console", func() {
		It("should read and write through the channel", func() {
			console := NewMockChannel(mockCtrl)
			gomock.InOrder(
				console.EXPECT().Receive().Return(byte('q'), true, nil),
				console.EXPECT().Send(byte('q')).Return(nil),
				console.EXPECT().Send(byte('!')).Return(nil),
			)

			Expect(emu.Load("GET REG[0]\nOUT REG[0]\nOSR \"!\"\n")).To(Succeed())
			Expect(emu.Reset()).To(Succeed())
			emu.Cpu.Console = console

			Expect(emu.Run()).To(Succeed())
			Expect(emu.Cpu.Register[0]).To(Equal(byte('q')))
		})

		It("should report input failures and continue", func() {
			console := NewMockChannel(mockCtrl)
			gomock.InOrder(
				console.EXPECT().Receive().Return(byte(0), false, io.ErrChannelRead),
				console.EXPECT().Send(byte(7)).Return(nil),
			)

			Expect(emu.Load("SET REG[0] 7\nGET REG[0]\nOUT REG[0]\n")).To(Succeed())
			Expect(emu.Reset()).To(Succeed())
			emu.Cpu.Console = console

			Expect(emu.Run()).To(Succeed())
			Expect(emu.Reported).To(Equal(1))
			Expect(diagnostics.String()).To(HavePrefix("Error (Line 2): "))
			Expect(emu.Cpu.Register[0]).To(Equal(byte(7)))
		})

		It("should report output failures and continue", func() {
			console := NewMockChannel(mockCtrl)
			console.EXPECT().Send(byte('A')).Return(io.ErrChannelClosed)
			console.EXPECT().Send(byte('B')).Return(nil)

			Expect(emu.Load("SET REG[0] 'A\nOUT REG[0]\nSET REG[0] 'B\nOUT REG[0]\n")).To(Succeed())
			Expect(emu.Reset()).To(Succeed())
			emu.Cpu.Console = console

			Expect(emu.Run()).To(Succeed())
			Expect(emu.Reported).To(Equal(1))
		})
	})

	Context("Subroutines", func() {
		It("should return to the line after the call", func() {
			err := run("JSR one\nOUT REG[1]\nSBR one:\nSET REG[1] '1\nRET\n")

			Expect(err).NotTo(HaveOccurred())
			Expect(output.String()).To(Equal("1"))
			Expect(emu.Cpu.Stack.Empty()).To(BeTrue())
		})

		It("should stop at the call stack limit", func() {
			err := run("SBR down:\nJSR down\nRET\nJSR down\n")

			Expect(errors.Is(err, cpu.ErrStackOverflow)).To(BeTrue())
			Expect(emu.Cpu.Stack.Depth()).To(Equal(cpu.STACK_LIMIT))
		})
	})

	It("should reject a program without a trailing newline", func() {
		err := emu.Load("OUT REG[0]")

		Expect(errors.Is(err, cpu.ErrMissingTrailingNewline)).To(BeTrue())
	})
})
