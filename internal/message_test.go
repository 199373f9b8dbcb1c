package internal

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/korneil/launchif/internal/launch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	m, err := ParseMessage([]byte(`  {"command":"saveConfig","deviceName":"STM32L476RG","executablePath":"build/app.elf","interfaceFile":"interface/stlink.cfg","targetFile":"target/stm32l4x.cfg","svdFilePath":"STM32L4x6.svd","adapterSpeed":"480"}  `))
	require.NoError(t, err)

	assert.Equal(t, CommandSaveConfig, m.Command)
	assert.Equal(t, launch.Input{
		DeviceName:     "STM32L476RG",
		ExecutablePath: "build/app.elf",
		InterfaceFile:  "interface/stlink.cfg",
		TargetFile:     "target/stm32l4x.cfg",
		SVDFilePath:    "STM32L4x6.svd",
		AdapterSpeed:   "480",
	}, m.Input)
}

func TestParseMessage_Errors(t *testing.T) {
	_, err := ParseMessage([]byte(`{"deviceName":"x"}`))
	assert.Error(t, err)

	_, err = ParseMessage([]byte(`{"command":`))
	assert.Error(t, err)
}

func TestReadRequest(t *testing.T) {
	p := filepath.Join(t.TempDir(), "board.launch.yml")
	require.NoError(t, os.WriteFile(p, []byte(`
device_name: nRF52840_xxAA
executable_path: build/zephyr/zephyr.elf
interface_file: interface/jlink.cfg
target_file: target/nrf52.cfg
svd_file_path: nrf52840.svd
adapter_speed: "4000"
`), 0o644))

	in, err := ReadRequest(p)
	require.NoError(t, err)
	assert.Equal(t, "nRF52840_xxAA", in.DeviceName)
	assert.Equal(t, "4000", in.AdapterSpeed)
	assert.Equal(t, "target/nrf52.cfg", in.TargetFile)

	_, err = ReadRequest(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLineReader(t *testing.T) {
	long := strings.Repeat("x", 10000)
	r := NewLineReader(strings.NewReader("first\n" + long + "\nlast"))
	ctx := context.Background()

	var lines []string
	for {
		line, err := r.ReadLine(ctx)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		lines = append(lines, string(line))
	}

	assert.Equal(t, []string{"first", long, "last"}, lines)
}
