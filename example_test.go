package nativeplan_test

import (
	"fmt"

	"github.com/cpuguy83/nativeplan"
)

func ExampleRewriter_Rewrite() {
	// The host hands the rewriter its build configuration. In a real
	// integration this comes from the build tool's plugin API.
	host := &nativeplan.StaticHost{
		OutputDir: "/project/build",
		Root:      "/opt/app",
	}

	r := nativeplan.NewRewriter(host)

	plan := nativeplan.BuildPlan{
		Layers: []nativeplan.Layer{
			{Name: "dependencies"},
			{Name: "extra files"},
		},
	}

	out, err := r.Rewrite(plan, map[string]string{"imageName": "server"}, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, l := range out.Layers {
		fmt.Println(l.Name)
	}
	fmt.Println("entrypoint:", out.Entrypoint)
}

func ExampleStaticHost() {
	// A host with the native compiler integration configured: its
	// "main" binary supplies the executable name when neither the
	// imageName property nor the container main identifier is set.
	host := &nativeplan.StaticHost{
		OutputDir: "/project/build",
		Binaries: map[string]nativeplan.BinaryConfig{
			"main": {MainClass: "com.example.Server"},
		},
	}

	if nb, ok := host.NativeBuild(); ok {
		bin, _ := nb.Binary("main")
		fmt.Println(bin.MainClass)
	}
	// Output: com.example.Server
}
