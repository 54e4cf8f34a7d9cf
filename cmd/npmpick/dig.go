package main

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/npmpick/internal"
	"github.com/rios0rios0/npmpick/internal/infrastructure/controllers"
)

type injected struct {
	dig.In

	App     *internal.AppInternal
	Upgrade *controllers.UpgradeController
}

func injectAppContext() injected {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var result injected
	if err := container.Invoke(func(in injected) {
		result = in
	}); err != nil {
		panic(err)
	}

	return result
}
