package vsh

import (
	"fmt"
	"sort"

	"github.com/mattn/go-shellwords"
	"github.com/mwantia/vsh/cmd"
)

// Register registers a command under its name.
func (s *Shell) Register(command cmd.Command) error {
	if command == nil || command.Spec() == nil {
		return fmt.Errorf("%w: command cannot be nil", ErrInvalidCommand)
	}

	name := command.Name()
	if name == "" {
		return fmt.Errorf("%w: command name cannot be empty", ErrInvalidCommand)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cmds[name]; exists {
		return fmt.Errorf("%w: %s", ErrCommandExists, name)
	}

	s.cmds[name] = command
	s.log.Debug("Registered command '%s'", name)
	return nil
}

// Unregister removes a registered command.
func (s *Shell) Unregister(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cmds[name]; !exists {
		return fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	delete(s.cmds, name)
	return nil
}

// Command returns a command by name. Aliases pointing at a single command
// name resolve to that command.
func (s *Shell) Command(name string) (cmd.Command, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if command, exists := s.cmds[name]; exists {
		return command, nil
	}

	if tokens, exists := s.aliases[name]; exists {
		if command, exists := s.cmds[tokens[0]]; exists {
			return command, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
}

// Commands returns all registered commands sorted by name.
func (s *Shell) Commands() []cmd.Command {
	s.mu.RLock()
	defer s.mu.RUnlock()

	commands := make([]cmd.Command, 0, len(s.cmds))
	for _, command := range s.cmds {
		commands = append(commands, command)
	}

	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})

	return commands
}

// Alias makes name expand to the command line target, e.g. "ll" to "ls -l".
// Tokens given after the alias are appended to the expansion.
func (s *Shell) Alias(name, target string) error {
	tokens, err := shellwords.Parse(target)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAlias, err)
	}
	if name == "" || len(tokens) == 0 {
		return fmt.Errorf("%w: '%s'", ErrInvalidAlias, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.aliases[name] = tokens
	return nil
}

// Aliases returns every alias with its expansion.
func (s *Shell) Aliases() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	aliases := make(map[string][]string, len(s.aliases))
	for name, tokens := range s.aliases {
		aliases[name] = append([]string(nil), tokens...)
	}

	return aliases
}

func (s *Shell) expand(tokens []string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expansion, exists := s.aliases[tokens[0]]
	if !exists {
		return tokens
	}

	expanded := make([]string, 0, len(expansion)+len(tokens)-1)
	expanded = append(expanded, expansion...)
	return append(expanded, tokens[1:]...)
}
