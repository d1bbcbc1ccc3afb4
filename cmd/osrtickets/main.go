package main

import (
	"log"

	"github.com/GolpiraElmiA/OSRTickets/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
