package strata

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure taxonomy. Every failure returned by
// [Resolve] matches exactly one of them under [errors.Is]; the concrete
// error types below carry the offending names.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrCyclicExtends    = errors.New("cyclic extends")
	ErrMultipleExtends  = errors.New("multiple extends")
	ErrDuplicateBlock   = errors.New("duplicate block")
)

// NotFoundError reports a template name the loader could not resolve.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template '%s': not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrTemplateNotFound }

// CycleError reports an extends chain that revisits a template. Chain
// holds the names in traversal order, with the revisited name last.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic extends: %s", strings.Join(e.Chain, " -> "))
}

func (e *CycleError) Is(target error) bool { return target == ErrCyclicExtends }

// MultipleExtendsError reports a template with more than one extends
// directive.
type MultipleExtendsError struct {
	Template string
	Refs     []string
}

func (e *MultipleExtendsError) Error() string {
	return fmt.Sprintf("template '%s': multiple extends (%s)", e.Template, strings.Join(e.Refs, ", "))
}

func (e *MultipleExtendsError) Is(target error) bool { return target == ErrMultipleExtends }

// DuplicateBlockError reports a block name declared more than once within
// one template.
type DuplicateBlockError struct {
	Template string
	Block    string
}

func (e *DuplicateBlockError) Error() string {
	return fmt.Sprintf("template '%s': duplicate block '%s'", e.Template, e.Block)
}

func (e *DuplicateBlockError) Is(target error) bool { return target == ErrDuplicateBlock }

// OrphanBlock is a non-fatal advisory: a block declared somewhere in the
// chain that no ancestor ever places, so its content was dropped. It is
// returned alongside a successful resolve for the caller to log.
type OrphanBlock struct {
	// Block is the declared block name.
	Block string
	// Template names the template that declared it.
	Template string
}

func (o OrphanBlock) String() string {
	return fmt.Sprintf("block '%s' declared in '%s' is never placed", o.Block, o.Template)
}
