package main

import "github.com/goplus/recipe/cmd/recipe/internal"

func main() {
	internal.Execute()
}
