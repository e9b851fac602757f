package command_test

import (
	"fmt"

	"github.com/ZebulonRouseFrantzich/fetchbin/internal/command"
)

func ExampleBuilder_CommandLine() {
	opts := command.NewOptionSet().
		Single("repo", "https://github.com/foo/bar").
		Single("source-path", "/a,/b").
		Flag("help")

	b := command.NewBuilder("/opt/fetchbin/fetch_linux_amd64")
	fmt.Println(b.CommandLine(opts, "/tmp/out"))
	// Output: /opt/fetchbin/fetch_linux_amd64 --repo="https://github.com/foo/bar" --source-path="/a" --source-path="/b" --help /tmp/out
}

func ExampleBuilder_Args() {
	opts := command.NewOptionSet().Multi("--tag", "v1,beta")

	b := command.NewBuilder("/opt/fetchbin/fetch_linux_amd64")
	fmt.Printf("%q\n", b.Args(opts, "out"))
	// Output: ["--tag=v1,beta" "out"]
}
