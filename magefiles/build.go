//go:build mage

package main

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the desktop testbed into bin/.
func (Build) Desktop() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/testbed", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Builds the testbed for the browser into web/ along with wasm_exec.js.
func (Build) Wasm() error {
	if err := os.MkdirAll("web", 0o755); err != nil {
		return err
	}
	env := []string{"GOOS=js", "GOARCH=wasm"}
	if _, err := executeCmd("go", withArgs("build", "-o", "web/testbed.wasm", "."), withEnv(env...), withStream()); err != nil {
		return err
	}
	goroot, err := executeCmd("go", withArgs("env", "GOROOT"))
	if err != nil {
		return err
	}
	src := filepath.Join(trimNewline(goroot), "lib", "wasm", "wasm_exec.js")
	if _, err := os.Stat(src); err != nil {
		// Go < 1.24 keeps it under misc/
		src = filepath.Join(trimNewline(goroot), "misc", "wasm", "wasm_exec.js")
	}
	return copyFile(src, filepath.Join("web", "wasm_exec.js"))
}

// Runs every package test, the headless renderer included.
func (Build) Test() error {
	args := []string{"test", "./..."}
	if runtime.GOOS != "windows" {
		args = append(args, "-race")
	}
	_, err := executeCmd("go", withArgs(args...), withStream())
	return err
}
