package datastructure

import (
	"routegraph/pkg/storage"
)

type MemberKind uint8

const (
	MemberNode MemberKind = iota
	MemberWay
	MemberRelation
)

type RelationMember struct {
	Kind MemberKind
	ID   int64
	Role string
}

// RawRelation is one relation record from rawrels.dat. Only turn restriction
// relations survive preprocessing, but the record format is generic.
type RawRelation struct {
	ID      int64
	Type    int32
	Members []RelationMember
}

func (r *RawRelation) Write(writer *storage.FileWriter) error {
	if err := writer.WriteInt64(r.ID); err != nil {
		return err
	}
	if err := writer.WriteInt32(r.Type); err != nil {
		return err
	}
	if err := writer.WriteUint32(uint32(len(r.Members))); err != nil {
		return err
	}
	for _, member := range r.Members {
		if err := writer.WriteUint8(uint8(member.Kind)); err != nil {
			return err
		}
		if err := writer.WriteInt64(member.ID); err != nil {
			return err
		}
		if err := writer.WriteString(member.Role); err != nil {
			return err
		}
	}
	return nil
}

func (r *RawRelation) Read(scanner *storage.FileScanner) error {
	var err error
	if r.ID, err = scanner.ReadInt64(); err != nil {
		return err
	}
	if r.Type, err = scanner.ReadInt32(); err != nil {
		return err
	}
	memberCount, err := scanner.ReadUint32()
	if err != nil {
		return err
	}
	r.Members = make([]RelationMember, memberCount)
	for i := range r.Members {
		kind, err := scanner.ReadUint8()
		if err != nil {
			return err
		}
		r.Members[i].Kind = MemberKind(kind)
		if r.Members[i].ID, err = scanner.ReadInt64(); err != nil {
			return err
		}
		if r.Members[i].Role, err = scanner.ReadString(); err != nil {
			return err
		}
	}
	return nil
}
