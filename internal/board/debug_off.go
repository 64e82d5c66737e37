//go:build !boarddebug

package board

const debug = false
