package main

import "github.com/semi-technologies/weaviate-io/cmd"

func main() {
	cmd.Execute()
}
