// kwbank — банк ключевых слов для управления кампаниями Amazon PPC.
// Централизует импорт, нормализацию, дедупликацию и генерацию кампаний.
package main

import (
	"os"

	"kwbank/cmd/kwbank/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
