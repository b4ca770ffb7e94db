// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package translate renders user-facing messages in the host locale.
//
// The printer-per-process approach follows the translate package of
// github.com/ezrec/ucapp.
package translate

import (
	"github.com/jeandeaual/go-locale"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is used when the host reports no usable locale.
var Fallback = language.AmericanEnglish

var printer = NewPrinter(hostLocales())

func hostLocales() []string {
	locales, err := locale.GetLocales()
	if err != nil {
		logrus.WithError(err).Warn("lc3: cannot read host locale")
	}

	return locales
}

// NewPrinter returns a printer for the best match among locales, or for
// Fallback when none is given.
func NewPrinter(locales []string) *message.Printer {
	if len(locales) == 0 {
		return message.NewPrinter(Fallback)
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From formats an en-US Sprintf() style key in the host locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
