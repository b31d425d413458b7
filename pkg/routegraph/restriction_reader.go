package routegraph

import (
	"fmt"
	"path/filepath"

	"routegraph/pkg/datastructure"
	"routegraph/pkg/storage"
)

// readRestrictionRelations scans rawrels.dat and keeps only turn
// restrictions, keyed by their via node. Relations that lack a from way, a
// via node or a to way are dropped silently.
func (b *Builder) readRestrictionRelations() (map[int64][]datastructure.Restriction, error) {
	posRestrictions := make(map[int32]struct{})
	negRestrictions := make(map[int32]struct{})

	for _, name := range datastructure.AllowRestrictionTypes {
		if id := b.typeConfig.GetRelationTypeID(name); id != datastructure.TypeIgnore {
			posRestrictions[id] = struct{}{}
		}
	}
	for _, name := range datastructure.ForbidRestrictionTypes {
		if id := b.typeConfig.GetRelationTypeID(name); id != datastructure.TypeIgnore {
			negRestrictions[id] = struct{}{}
		}
	}

	filename := filepath.Join(b.parameter.DestinationDirectory, storage.RAWRELS_FILE_NAME)
	scanner, err := storage.OpenFileScanner(filename, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputOpen, err)
	}
	defer scanner.Close()

	rawRelCount, err := scanner.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: number of data entries in '%s': %w", ErrInputRead, filename, err)
	}

	restrictions := make(map[int64][]datastructure.Restriction)

	for r := uint32(1); r <= rawRelCount; r++ {
		b.progress.SetProgress(r, rawRelCount)

		var relation datastructure.RawRelation
		if err := relation.Read(scanner); err != nil {
			return nil, fmt.Errorf("%w: data entry %d of %d in '%s': %w", ErrInputRead, r, rawRelCount, filename, err)
		}

		_, isPos := posRestrictions[relation.Type]
		_, isNeg := negRestrictions[relation.Type]
		if !isPos && !isNeg {
			continue
		}

		restriction := datastructure.Restriction{Kind: datastructure.RestrictionForbid}
		if isPos {
			restriction.Kind = datastructure.RestrictionAllow
		}

		var via int64
		for _, member := range relation.Members {
			switch {
			case member.Kind == datastructure.MemberWay && member.Role == "from":
				restriction.From = member.ID
			case member.Kind == datastructure.MemberNode && member.Role == "via":
				via = member.ID
			case member.Kind == datastructure.MemberWay && member.Role == "to":
				restriction.To = member.ID
			}
		}

		if restriction.From != 0 && via != 0 && restriction.To != 0 {
			restrictions[via] = append(restrictions[via], restriction)
		}
	}

	b.progress.Info(fmt.Sprintf("Found %d restrictions", len(restrictions)))

	return restrictions, nil
}
