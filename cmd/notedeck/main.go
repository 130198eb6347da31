// Command notedeck is a terminal sticky-notes board with a month calendar.
package main

// Version is set at build time via ldflags
var Version = ""

func main() {
	Execute()
}
