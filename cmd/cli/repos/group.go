package repos

import "github.com/spf13/cobra"

type commandBuilder interface {
	Build() (*cobra.Command, error)
}

// CommandSetBuilder assembles every repository command sharing one set of providers.
type CommandSetBuilder struct {
	Providers
}

// Build constructs ls, changes, clone, create, rename, clean and path in that order.
func (builder *CommandSetBuilder) Build() ([]*cobra.Command, error) {
	builders := []commandBuilder{
		&ListCommandBuilder{Providers: builder.Providers},
		&ChangesCommandBuilder{Providers: builder.Providers},
		&CloneCommandBuilder{Providers: builder.Providers},
		&CreateCommandBuilder{Providers: builder.Providers},
		&RenameCommandBuilder{Providers: builder.Providers},
		&CleanCommandBuilder{Providers: builder.Providers},
		&PathCommandBuilder{Providers: builder.Providers},
	}

	commands := make([]*cobra.Command, 0, len(builders))
	for _, candidate := range builders {
		command, buildError := candidate.Build()
		if buildError != nil {
			return nil, buildError
		}
		commands = append(commands, command)
	}
	return commands, nil
}
