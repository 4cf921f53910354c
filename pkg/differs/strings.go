package differs

import "regexp"

// AnyString allows any string to be matched against it when
// differs.Custom is passed to cmp
func AnyString() CustomComparer {
	return Customf(func(o interface{}) bool {
		_, ok := o.(string)
		return ok
	})
}

// CaptureString matches any string the first time it is used but
// on the second attempt, the string has to match exactly the same as
// the first one.
func CaptureString() CustomComparer {
	var matched string
	seen := false
	return Customf(func(o interface{}) bool {
		s, ok := o.(string)
		if !seen && ok {
			seen, matched = true, s
		}
		return ok && matched == s
	})
}

// Matches allows any string matching the regular expression expr.
func Matches(expr string) CustomComparer {
	re := regexp.MustCompile(expr)
	return Customf(func(o interface{}) bool {
		s, ok := o.(string)
		return ok && re.MatchString(s)
	})
}
