package analyze

import (
	"fmt"

	"github.com/custodia-labs/skillgap/internal/core/domain"
)

// ErrRoleRequired is shown when the form is submitted without a role.
var ErrRoleRequired = fmt.Errorf("%w: target role is required", domain.ErrInvalidInput)
