package utilx

// Must turns a (value, error) pair into the value, panicking when the error
// is set. It is meant for initialization paths and test fixtures where the
// error cannot happen or leaves nothing worth recovering.
//
//	mapping := utilx.Must(elasticx.MappingFromYAML(raw))
func Must[T any](item T, err error) T {
	if err != nil {
		panic(err.Error())
	}
	return item
}
