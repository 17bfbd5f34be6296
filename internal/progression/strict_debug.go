//go:build climbdebug

package progression

const strictLevels = true
