package main

import "github.com/lehigh-university-libraries/datacite-store/cmd"

func main() {
	cmd.Execute()
}
