package main

import (
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/aritramanna/axi-4-dma-subsystem/dma"
	"github.com/aritramanna/axi-4-dma-subsystem/regfile"
	"github.com/aritramanna/axi-4-dma-subsystem/system"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one transfer and verify the copied data.",
	Run:   runTransfer,
}

func init() {
	// Flag defaults can come from the environment or a .env file.
	_ = godotenv.Load()

	flags := runCmd.Flags()
	flags.Uint32("src", envUint32("AXIDMA_SRC", 0x1000),
		"source address")
	flags.Uint32("dst", envUint32("AXIDMA_DST", 0x2000),
		"destination address")
	flags.Uint32("len", envUint32("AXIDMA_LEN", 64),
		"transfer length in bytes")
	flags.Uint64("timeout", envUint64("AXIDMA_TIMEOUT",
		dma.DefaultTimeoutThreshold),
		"watchdog threshold in cycles")
	flags.Bool("random-stalls", false,
		"apply random memory handshake delays")
	flags.Int64("seed", 1,
		"seed for the random handshake delays")
	flags.String("trace", "",
		"record a transfer trace to an SQLite database at this path")

	rootCmd.AddCommand(runCmd)
}

func envUint32(key string, fallback uint32) uint32 {
	s, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return fallback
	}

	return uint32(v)
}

func envUint64(key string, fallback uint64) uint64 {
	s, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return fallback
	}

	return v
}

func runTransfer(cmd *cobra.Command, _ []string) {
	src, _ := cmd.Flags().GetUint32("src")
	dst, _ := cmd.Flags().GetUint32("dst")
	length, _ := cmd.Flags().GetUint32("len")
	timeout, _ := cmd.Flags().GetUint64("timeout")
	randomStalls, _ := cmd.Flags().GetBool("random-stalls")
	seed, _ := cmd.Flags().GetInt64("seed")
	trace, _ := cmd.Flags().GetString("trace")

	builder := system.MakeBuilder().WithTimeoutThreshold(timeout)
	if randomStalls {
		builder = builder.WithRandomStalls(seed)
	}
	if trace != "" {
		builder = builder.WithDataRecording(trace)
	}
	sys := builder.Build("DMA")

	for i := uint32(0); i < length; i++ {
		sys.Memory().WriteByte(uint64(src+i), byte(i))
	}

	mustWrite(sys, regfile.RegSrc, src)
	mustWrite(sys, regfile.RegDst, dst)
	mustWrite(sys, regfile.RegLen, length)
	mustWrite(sys, regfile.RegCtrl, regfile.CtrlStart|regfile.CtrlIntEn)

	if err := sys.Run(); err != nil {
		color.Red("simulation failed: %v", err)
		atexit.Exit(1)
	}

	status, err := sys.ReadRegister(regfile.RegStatus)
	if err != nil {
		color.Red("status read failed: %v", err)
		atexit.Exit(1)
	}

	if status&regfile.StatusError != 0 || status&regfile.StatusDone == 0 {
		color.Red("transfer failed with status %s", regfile.StatusCode(status))
		atexit.Exit(1)
	}

	if !verifyCopy(sys, src, dst, length) {
		atexit.Exit(1)
	}

	color.Green("copied %d bytes from %#x to %#x in %d cycles",
		length, src, dst, sys.Engine().CurrentCycle())
}

func mustWrite(sys *system.System, offset, value uint32) {
	if err := sys.WriteRegister(offset, value); err != nil {
		color.Red("register write failed: %v", err)
		atexit.Exit(1)
	}
}

func verifyCopy(sys *system.System, src, dst, length uint32) bool {
	for i := uint32(0); i < length; i++ {
		want := sys.Memory().ReadByte(uint64(src + i))
		got := sys.Memory().ReadByte(uint64(dst + i))
		if got != want {
			color.Red("data mismatch at offset %d: want %#02x, got %#02x",
				i, want, got)
			return false
		}
	}

	return true
}
