package utils

import (
	"fmt"
	"os"

	"github.com/ttacon/chalk"
)

// FailWith prints an error chain and exits; meant for the cmd/ binaries,
// never for library code.
func FailWith(err error) {
	fmt.Println("")
	fmt.Println(chalk.Red.Color("❌  An error occurred."))
	fmt.Println("")

	fmt.Printf("%+v\n", err)

	os.Exit(1)
}

func WarnWith(err error) {
	fmt.Println("")
	fmt.Println(chalk.Yellow.Color("⚠️  Warning"))
	fmt.Println("")

	fmt.Printf("%v\n", err)
}
