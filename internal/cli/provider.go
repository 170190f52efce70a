package cli

import apperrors "github.com/agbru/fibbench/internal/errors"

var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

func (c CLIColorProvider) Yellow() string { return ColorYellow() }
func (c CLIColorProvider) Red() string    { return ColorRed() }
func (c CLIColorProvider) Reset() string  { return ColorReset() }
