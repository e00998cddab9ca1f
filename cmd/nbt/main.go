// Command nbt inspects and converts NBT files.
package main

func main() {
	execute()
}
