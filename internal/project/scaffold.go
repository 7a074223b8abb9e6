package project

import (
	"os"
	"path/filepath"
)

// exampleMain is the starter file written by Init.
const exampleMain = `package main

import "fmt"

class HelloWorld {
    message string = "Hello, Go-Extended!"

    func SayHello() {
        fmt.Println(this.message)
    }
}

func main() {
    hello := new HelloWorld()
    hello.SayHello()
}
`

// Init scaffolds a new project in root: manifest, source directory with
// an example unit, and the output directory. An existing example file is
// left alone.
func Init(root, name, module string) (*Manifest, error) {
	man := DefaultManifest(name)
	if module != "" {
		man.Module = module
	}

	if err := os.MkdirAll(filepath.Join(root, man.SourceDir), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(root, man.OutputDir), 0755); err != nil {
		return nil, err
	}
	if err := man.Save(root); err != nil {
		return nil, err
	}

	example := filepath.Join(root, man.SourceDir, "main.gox")
	if _, err := os.Stat(example); os.IsNotExist(err) {
		if err := os.WriteFile(example, []byte(exampleMain), 0644); err != nil {
			return nil, err
		}
	}

	return man, nil
}
