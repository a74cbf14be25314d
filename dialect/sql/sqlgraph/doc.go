// Package sqlgraph implements ancestry.Query over SQL tables.
//
// A Query starts as a SELECT over the table of one graph type. Each
// projection appends a LEFT JOIN to the referenced table and moves the
// selection to it, so the composed statement keeps one row per source row:
//
//	q, _ := sqlgraph.NewQuery(g, "Bolt", sql.FieldEQ("id", 1))
//	cars, _ := client.FindParent("Bolt", "Car", q)
//	// SELECT `t2`.`id`, `t2`.`model`, `t2`.`garage_id` FROM `bolts` AS `t0`
//	// LEFT JOIN `tires` AS `t1` ON `t0`.`tire_id` = `t1`.`id`
//	// LEFT JOIN `cars` AS `t2` ON `t1`.`car_id` = `t2`.`id`
//	// WHERE `t0`.`id` = ?
//	rows, err := cars.(*sqlgraph.Query).All(ctx, drv)
package sqlgraph
