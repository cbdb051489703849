/*
Package headline fills tabloid headline templates from categorized word lists.

A template is literal text with placeholders of the form {key[:case]}:

	{t}       topic, unchanged          "Dungeons & Dragons"
	{v:u}     verb, all uppercase       "HUFFING"
	{demo:c}  demographic, capitalised  "Millenials"

Keys: t (topic), f (flavour), v (verb), demo (demographic).
Cases: p or _ (pass, the default), c (capitalise), u (upper), l (lower).

Placeholders do not nest. Every draw comes from the Random passed by the
caller, one draw per placeholder, so a seeded source reproduces a run exactly.
*/
package headline
