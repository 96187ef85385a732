// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/consensys/sha512-circuit/pkg/sha512"
	"github.com/consensys/sha512-circuit/pkg/sha512/table16"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("hex", false, "Interpret the message as a hex string")
	rootCmd.Flags().String("file", "", "Read the message from a file instead of the command line")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")
}

// rootCmd hashes a message through the SHA-512 circuit, checks the witness
// trace against every constraint, and prints the digest.
var rootCmd = &cobra.Command{
	Use:   "sha512prove [message]",
	Short: "Hash a message through the SHA-512 circuit and verify the trace.",
	Run: func(cmd *cobra.Command, args []string) {
		var msg []byte
		//
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
		//
		switch file, _ := cmd.Flags().GetString("file"); {
		case file != "":
			var err error
			//
			if msg, err = os.ReadFile(file); err != nil {
				log.Fatalf("reading message: %v", err)
			}
		case len(args) == 1:
			msg = []byte(args[0])
		default:
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		if isHex, _ := cmd.Flags().GetBool("hex"); isHex {
			decoded, err := hex.DecodeString(string(msg))
			if err != nil {
				log.Fatalf("decoding hex message: %v", err)
			}
			//
			msg = decoded
		}
		//
		chip := table16.NewTable16Chip()
		//
		digest, err := sha512.Digest(chip, sha512.PadMessage(msg))
		if err != nil {
			log.Fatalf("assigning witness: %v", err)
		}
		//
		failures := chip.Verify()
		//
		for _, failure := range failures {
			log.Errorf("%s", failure.Message())
		}
		//
		if len(failures) > 0 {
			log.Fatalf("trace does not satisfy the circuit (%d failures)", len(failures))
		}
		//
		if term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Printf("digest: %s\n", sha512.DigestHex(digest))
			fmt.Printf("rows: %d, constraints satisfied\n", chip.Trace().Height())
		} else {
			fmt.Println(sha512.DigestHex(digest))
		}
	},
}
