// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Field helpers used to marshal values into log entries.

package log

// Marshaler is the interface to be implemented by items that can be logged.
//
// The MarshalLog function will be called by the logger with the
// addField function provided. The implementation can add logging
// fields using this function. The field value can itself be another
// Marshaler instance, in which case the field names are concatenated
// with dot to indicate nesting.
type Marshaler interface {
	MarshalLog(addField func(key string, v interface{}))
}

// F is a map of fields used for logging:
//
//	log.Info(ctx, "tests reordered", log.F{"shuffler.seed": seed})
//
// When logging errors, use events.Err:
//
//	log.Error(ctx, "some failure", events.Err(err))
type F map[string]interface{}

// Set writes the field value into F. If the value implements
// interface { MarshalRoot() log.Marshaler } then it marshals it
// from the root level. If the value is a log.Marshaler, it
// recursively marshals that value into F.
func (f F) Set(field string, value interface{}) {
	marshal(field, value, func(key string, value interface{}) {
		f[key] = value
	})
}

// MarshalLog implements the Marshaler interface for F
func (f F) MarshalLog(addField func(field string, value interface{})) {
	for k, v := range f {
		addField(k, v)
	}
}

// Many aggregates marshaling of many items
//
// This avoids having to build an append list and also simplifies code
type Many []Marshaler

// MarshalLog calls MarshalLog on all the individual elements
func (m Many) MarshalLog(addField func(key string, v interface{})) {
	for _, item := range m {
		if item != nil {
			item.MarshalLog(addField)
		}
	}
}

// marshal recursively expands Marshaler values, joining nested keys with ".".
func marshal(prefix string, v interface{}, setField func(key string, value interface{})) {
	if rm, ok := v.(interface{ MarshalRoot() Marshaler }); ok {
		marshal("", rm.MarshalRoot(), setField)
	}

	if m, ok := v.(Marshaler); ok {
		m.MarshalLog(func(inner string, val interface{}) {
			if prefix == "" {
				marshal(inner, val, setField)
			} else {
				marshal(prefix+"."+inner, val, setField)
			}
		})
	} else if prefix != "" {
		setField(prefix, v)
	}
}
