package report

// Aggregate группирует плоский список: родитель → категория → материалы.
// Порядок групп — порядок первого появления, порядок записей внутри
// категории совпадает с исходным.
func Aggregate(records []MaterialRecord) Tree {
	var parents []*ParentNode
	byParent := make(map[string]*ParentNode)
	byCat := make(map[string]map[string]*CategoryNode)
	perParent := make(map[string][]MaterialRecord)

	for _, rec := range records {
		rec.Normalize()

		p, ok := byParent[rec.Parent]
		if !ok {
			p = &ParentNode{Name: rec.Parent}
			byParent[rec.Parent] = p
			byCat[rec.Parent] = make(map[string]*CategoryNode)
			parents = append(parents, p)
		}

		c, ok := byCat[rec.Parent][rec.Category]
		if !ok {
			c = &CategoryNode{Name: rec.Category, ParentName: rec.Parent}
			byCat[rec.Parent][rec.Category] = c
			p.Categories = append(p.Categories, c)
		}
		c.Items = append(c.Items, rec)
		perParent[rec.Parent] = append(perParent[rec.Parent], rec)
	}

	for _, p := range parents {
		for _, c := range p.Categories {
			c.Totals = Sum(c.Items)
		}
		// по всем записям родителя, а не по итогам категорий
		p.Totals = Sum(perParent[p.Name])
	}

	return Tree{Parents: parents, Grand: Sum(records)}
}
