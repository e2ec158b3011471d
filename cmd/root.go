/*
Copyright © 2025 Matt Krueger <mkrueger@rstms.net>
All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

 1. Redistributions of source code must retain the above copyright notice,
    this list of conditions and the following disclaimer.

 2. Redistributions in binary form must reproduce the above copyright notice,
    this list of conditions and the following disclaimer in the documentation
    and/or other materials provided with the distribution.

 3. Neither the name of the copyright holder nor the names of its contributors
    may be used to endorse or promote products derived from this software
    without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
POSSIBILITY OF SUCH DAMAGE.
*/
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/rstms/rosdump/dump"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Version: "0.1.0",
	Use:     "rosdump [flags] FILE [FILEOFFSET] [BASEADDR]",
	Short:   "display hexadecimal file dumps like RISC OS",
	Long: `
Display the contents of a binary file as rows of hexadecimal values
with a parallel text column, in the style of the RISC OS Dump command.
FILEOFFSET and BASEADDR are hexadecimal. BASEADDR defaults to 8000 for
Absolute images (a ',ff8' filetype suffix) and 0 otherwise.
`,
	Args: cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]
		fileOffset := int64(0)
		if len(args) > 1 {
			offset, err := parseHex("FILEOFFSET", args[1])
			cobra.CheckErr(err)
			fileOffset = offset
		}
		baseAddress := dump.DefaultBaseAddress(filename)
		if len(args) > 2 {
			base, err := parseHex("BASEADDR", args[2])
			cobra.CheckErr(err)
			baseAddress = base
		}

		granularity := dump.Byte
		if ViperGetBool("words") {
			granularity = dump.Word
		}
		config := dump.Config{
			RowSize:          ViperGetInt("row-size"),
			Granularity:      granularity,
			BaseAddress:      baseAddress,
			StartOffset:      fileOffset,
			DecimalAddresses: ViperGetBool("decimal"),
		}
		if ViperGetBool("verbose") {
			log.Printf("dump %s offset=%X base=%X rowsize=%d\n", filename, fileOffset, baseAddress, config.RowSize)
		}

		info, err := os.Stat(filename)
		cobra.CheckErr(openError(filename, err))
		if info.IsDir() {
			cobra.CheckErr(fmt.Errorf("'%s' is a directory", filename))
		}
		source, err := dump.OpenFile(filename)
		cobra.CheckErr(openError(filename, err))
		defer source.Close()

		dumper, err := dump.New(config, source)
		cobra.CheckErr(err)

		renderer := dump.NewTextRenderer(dumper)
		renderer.NoText = ViperGetBool("no-text")
		err = renderer.Write(os.Stdout, dumper)
		if err != nil {
			if errors.Is(err, syscall.EPIPE) {
				// Output was piped into something like head; nothing to report.
				os.Exit(1)
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func parseHex(name, value string) (int64, error) {
	raw := value
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		raw = raw[2:]
	}
	parsed, err := strconv.ParseInt(raw, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hexadecimal %s: '%s'", name, value)
	}
	return parsed, nil
}

func openError(filename string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("'%s' not found", filename)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("'%s' is not accessible", filename)
	case errors.Is(err, syscall.EISDIR):
		return fmt.Errorf("'%s' is a directory", filename)
	}
	return err
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)
	OptionString(rootCmd, "config", "c", "", "config file")
	OptionSwitch(rootCmd, "debug", "d", "produce debug output")
	OptionSwitch(rootCmd, "verbose", "v", "produce diagnostic output")
	OptionInt(rootCmd, "row-size", "r", 16, "number of bytes in a row")
	OptionSwitch(rootCmd, "words", "w", "dump in 32bit words (defaults to bytes)")
	OptionSwitch(rootCmd, "decimal", "", "display addresses in decimal")
	OptionSwitch(rootCmd, "no-text", "", "omit the text column")
}
