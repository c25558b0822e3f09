// cmd/phoneprobe/main.go
package main

func main() {
	Execute()
}
