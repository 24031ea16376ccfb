// shadercheck validates GLSL ES 3.0 shader files without a GPU by running
// them through the ANGLE translator. Useful for catching syntax errors in
// CI, where no GL context is available.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/glsteps/glsteps/validate"
)

func main() {
	stage := flag.String("stage", "", "Shader stage (vertex or fragment); inferred from the file extension if empty")
	print := flag.Bool("print", false, "Print the translated desktop GLSL on success")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("usage: shadercheck [-stage vertex|fragment] [-print] file...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	failed := 0
	for _, path := range flag.Args() {
		code, err := validate.CheckFile(path, *stage)
		if err != nil {
			log.Printf("%s: %v", path, err)
			failed++
			continue
		}
		log.Printf("%s: ok", path)
		if *print {
			fmt.Println(code)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
