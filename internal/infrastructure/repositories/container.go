package repositories

import (
	"net/http"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/npmpick/internal/domain/repositories"
	"github.com/rios0rios0/npmpick/internal/infrastructure/repositories/manifest"
	"github.com/rios0rios0/npmpick/internal/infrastructure/repositories/npm"
	"github.com/rios0rios0/npmpick/internal/infrastructure/repositories/packagemanager"
	"github.com/rios0rios0/npmpick/internal/infrastructure/repositories/prompt"
	"github.com/rios0rios0/npmpick/internal/infrastructure/repositories/worktree"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Project files are addressed by absolute paths
	if err := container.Provide(func() billy.Filesystem {
		return osfs.New("/")
	}); err != nil {
		return err
	}

	if err := container.Provide(func() *npm.RegistryResolverRepository {
		return npm.NewRegistryResolverRepository(&http.Client{})
	}); err != nil {
		return err
	}
	if err := container.Provide(manifest.NewFileManifestRepository); err != nil {
		return err
	}
	if err := container.Provide(func(fs billy.Filesystem) *packagemanager.InstallerRepository {
		return packagemanager.NewInstallerRepository(
			fs, packagemanager.NewDefaultRegistry(), packagemanager.ExecCommandRunner{},
		)
	}); err != nil {
		return err
	}
	if err := container.Provide(prompt.NewHuhPrompterRepository); err != nil {
		return err
	}
	if err := container.Provide(worktree.NewGitWorktreeRepository); err != nil {
		return err
	}

	return bindInterfaces(container)
}

// bindInterfaces exposes the concrete repositories through their domain interfaces.
func bindInterfaces(container *dig.Container) error {
	bindings := []any{
		func(impl *npm.RegistryResolverRepository) domainRepos.ResolverRepository { return impl },
		func(impl *npm.RegistryResolverRepository) domainRepos.SourceURLRepository { return impl },
		func(impl *manifest.FileManifestRepository) domainRepos.ManifestRepository { return impl },
		func(impl *manifest.FileManifestRepository) domainRepos.ChangelogRepository { return impl },
		func(impl *packagemanager.InstallerRepository) domainRepos.InstallerRepository { return impl },
		func(impl *prompt.HuhPrompterRepository) domainRepos.PrompterRepository { return impl },
		func(impl *worktree.GitWorktreeRepository) domainRepos.WorktreeRepository { return impl },
	}
	for _, binding := range bindings {
		if err := container.Provide(binding); err != nil {
			return err
		}
	}
	return nil
}
