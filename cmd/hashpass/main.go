// Command hashpass prints the argon2id hash to put in auth.operator_hash.
// The passphrase is read from the first line of stdin.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"wallet-session-gateway/internal/service"
)

func main() {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintf(os.Stderr, "reading passphrase: %v\n", err)
		os.Exit(1)
	}
	passphrase := strings.TrimRight(line, "\r\n")
	if passphrase == "" {
		fmt.Fprintln(os.Stderr, "empty passphrase")
		os.Exit(1)
	}

	hash, err := service.NewArgon2HashService().Hash(passphrase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashing passphrase: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
