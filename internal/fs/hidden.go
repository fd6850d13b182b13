package fs

func isDotName(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
