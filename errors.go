package vsh

import "errors"

// Standard shell errors.
var (
	ErrNoCommand        = errors.New("vsh: no command specified")
	ErrCommandNotFound  = errors.New("vsh: command not found")
	ErrCommandExists    = errors.New("vsh: command already registered")
	ErrInvalidCommand   = errors.New("vsh: invalid command")
	ErrInvalidAlias     = errors.New("vsh: invalid alias")
	ErrUnterminatedLine = errors.New("vsh: unable to parse command line")
)
