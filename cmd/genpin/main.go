package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Hashes a station PIN for PIN_COCINA_HASH / PIN_BARRA_HASH.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "uso: genpin <pin>")
		os.Exit(1)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), 12)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
