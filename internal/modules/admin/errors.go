package admin

import "errors"

var ErrSkillNotFound = errors.New("skill not found")
