package server

const docsPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Meal Plan Service — API</title>
  <style>
    body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
    code, pre { background: #f4f4f4; padding: 0.15rem 0.35rem; border-radius: 3px; }
    pre { padding: 0.75rem; overflow-x: auto; }
    h2 { margin-top: 2rem; }
  </style>
</head>
<body>
  <h1>Meal Plan Service</h1>
  <p>Generates a formatted 7-day meal plan from user body data and a fitness goal.</p>

  <h2>POST /mealplan</h2>
  <p>Request body:</p>
  <pre>{
  "id": 7,
  "age": 30,
  "height": 175,
  "weight": 70,
  "gender": "MALE",
  "goal": "CUT"
}</pre>
  <p><code>goal</code> must be <code>CUT</code> or <code>BULK</code>. Response:</p>
  <pre>{ "meal_plan": "DAY 1 — Total ≈ ..." }</pre>
  <p>Failures return HTTP 500 with <code>{ "detail": "..." }</code>.</p>

  <h2>GET /health</h2>
  <pre>{ "status": "healthy", "service": "mealplan-service" }</pre>
</body>
</html>
`
