package nbt

import "fmt"

// CopyDocument rebuilds, through w, the full document r has imported:
// it opens r's root compound, begins w's root compound under the same
// name, and copies every descendant. This is the generic traversal
// primitive the CLI's convert and diff commands use instead of hand-
// rolling per-command walks, and it is what tests exercise for a
// round trip between encodings.
func CopyDocument(r *Reader, w *Writer) error {
	if !r.s.hasRoot {
		return fmt.Errorf("nbt: reader has no imported document")
	}
	rootName := r.s.tag(r.s.root).name
	if !r.OpenCompound(rootName) {
		return fmt.Errorf("nbt: could not open root compound %q", rootName)
	}
	if err := w.Begin(rootName); err != nil {
		return err
	}
	if err := copyCompoundChildren(r, w); err != nil {
		return err
	}
	if err := w.Finalize(); err != nil {
		return err
	}
	return r.CloseCompound()
}

func copyCompoundChildren(r *Reader, w *Writer) error {
	for name := range r.Names() {
		kind, ok := r.KindOf(name)
		if !ok {
			continue
		}
		if err := copyNamedTag(r, w, name, kind); err != nil {
			return err
		}
	}
	return nil
}

func copyNamedTag(r *Reader, w *Writer, name string, kind Kind) error {
	switch kind {
	case KindByte:
		v, err := r.ReadByte(name)
		if err != nil {
			return err
		}
		return w.WriteByte(name, v)
	case KindShort:
		v, err := r.ReadShort(name)
		if err != nil {
			return err
		}
		return w.WriteShort(name, v)
	case KindInt:
		v, err := r.ReadInt(name)
		if err != nil {
			return err
		}
		return w.WriteInt(name, v)
	case KindLong:
		v, err := r.ReadLong(name)
		if err != nil {
			return err
		}
		return w.WriteLong(name, v)
	case KindFloat:
		v, err := r.ReadFloat(name)
		if err != nil {
			return err
		}
		return w.WriteFloat(name, v)
	case KindDouble:
		v, err := r.ReadDouble(name)
		if err != nil {
			return err
		}
		return w.WriteDouble(name, v)
	case KindString:
		v, err := r.ReadString(name)
		if err != nil {
			return err
		}
		return w.WriteString(name, v)
	case KindByteArray:
		v, err := r.ReadByteArray(name)
		if err != nil {
			return err
		}
		return w.WriteByteArray(name, v)
	case KindIntArray:
		v, err := r.ReadIntArray(name)
		if err != nil {
			return err
		}
		return w.WriteIntArray(name, v)
	case KindLongArray:
		v, err := r.ReadLongArray(name)
		if err != nil {
			return err
		}
		return w.WriteLongArray(name, v)
	case KindList:
		if !r.OpenList(name) {
			return fmt.Errorf("nbt: could not open list %q", name)
		}
		if err := w.BeginList(name); err != nil {
			return err
		}
		if err := copyListElements(r, w); err != nil {
			return err
		}
		if err := w.EndList(); err != nil {
			return err
		}
		return r.CloseList()
	case KindCompound:
		if !r.OpenCompound(name) {
			return fmt.Errorf("nbt: could not open compound %q", name)
		}
		if err := w.BeginCompound(name); err != nil {
			return err
		}
		if err := copyCompoundChildren(r, w); err != nil {
			return err
		}
		if err := w.EndCompound(); err != nil {
			return err
		}
		return r.CloseCompound()
	default:
		return fmt.Errorf("nbt: unsupported tag kind %s", kind)
	}
}

func copyListElements(r *Reader, w *Writer) error {
	n, err := r.ListSize()
	if err != nil {
		return err
	}
	elemKind, ok := r.ListElementKind()
	if !ok {
		return nil
	}
	for i := int32(0); i < n; i++ {
		if err := copyListElement(r, w, elemKind); err != nil {
			return err
		}
	}
	return nil
}

func copyListElement(r *Reader, w *Writer, kind Kind) error {
	switch kind {
	case KindByte:
		v, err := r.ReadByte("")
		if err != nil {
			return err
		}
		return w.WriteByte("", v)
	case KindShort:
		v, err := r.ReadShort("")
		if err != nil {
			return err
		}
		return w.WriteShort("", v)
	case KindInt:
		v, err := r.ReadInt("")
		if err != nil {
			return err
		}
		return w.WriteInt("", v)
	case KindLong:
		v, err := r.ReadLong("")
		if err != nil {
			return err
		}
		return w.WriteLong("", v)
	case KindFloat:
		v, err := r.ReadFloat("")
		if err != nil {
			return err
		}
		return w.WriteFloat("", v)
	case KindDouble:
		v, err := r.ReadDouble("")
		if err != nil {
			return err
		}
		return w.WriteDouble("", v)
	case KindString:
		v, err := r.ReadString("")
		if err != nil {
			return err
		}
		return w.WriteString("", v)
	case KindByteArray:
		v, err := r.ReadByteArray("")
		if err != nil {
			return err
		}
		return w.WriteByteArray("", v)
	case KindIntArray:
		v, err := r.ReadIntArray("")
		if err != nil {
			return err
		}
		return w.WriteIntArray("", v)
	case KindLongArray:
		v, err := r.ReadLongArray("")
		if err != nil {
			return err
		}
		return w.WriteLongArray("", v)
	case KindList:
		if !r.OpenList("") {
			return fmt.Errorf("nbt: could not open nested list element")
		}
		if err := w.BeginList(""); err != nil {
			return err
		}
		if err := copyListElements(r, w); err != nil {
			return err
		}
		if err := w.EndList(); err != nil {
			return err
		}
		return r.CloseList()
	case KindCompound:
		if !r.OpenCompound("") {
			return fmt.Errorf("nbt: could not open nested compound element")
		}
		if err := w.BeginCompound(""); err != nil {
			return err
		}
		if err := copyCompoundChildren(r, w); err != nil {
			return err
		}
		if err := w.EndCompound(); err != nil {
			return err
		}
		return r.CloseCompound()
	default:
		return fmt.Errorf("nbt: unsupported tag kind %s", kind)
	}
}
