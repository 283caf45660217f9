package services

import "github.com/km-arc/go-beans/framework/beans"

// DefaultPassword replaces any configured password unless the processor is
// given another replacement.
const DefaultPassword = "qwerty"

// PasswordPostProcessor overwrites the "password" property of every
// definition that declares one.
type PasswordPostProcessor struct {
	replacement string
}

// SetReplacement sets the value written over passwords.
func (p *PasswordPostProcessor) SetReplacement(s string) { p.replacement = s }

func (p *PasswordPostProcessor) ProcessDefinition(def *beans.Definition) error {
	if def.Properties == nil {
		return nil
	}
	if _, ok := def.Properties["password"]; !ok {
		return nil
	}
	replacement := p.replacement
	if replacement == "" {
		replacement = DefaultPassword
	}
	def.Properties["password"] = replacement
	return nil
}
